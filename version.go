package permitpath

// Version is the library version. Overridden via -ldflags on tagged
// release builds.
var Version = "0.3.0"
