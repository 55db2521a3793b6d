package utils

// REVISION is stamped into every API response envelope so client builds can
// be matched against server deploys.
const REVISION = "1.4.0"
