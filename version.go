package flow

// Version is the release of the flow module.
const Version = "0.1.0"
