package common

// UnknownStr is the String() result for values outside a known enumeration.
const UnknownStr = "unknown"
