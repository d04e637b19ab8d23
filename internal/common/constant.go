package common

// AuthTokenHeader is the request header carrying the identity token on
// every protected call.
const AuthTokenHeader = "auth-token"
