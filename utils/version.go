package utils

// REVISION identifies the build in log output.
const REVISION = "1.2.0"
