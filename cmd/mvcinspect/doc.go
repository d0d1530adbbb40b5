// Command mvcinspect builds the example arena registry and prints the
// inspector report for it.
//
// Usage:
//
//	mvcinspect [-apply patch.yaml] [-clear] [-out report.yaml]
//
// The registry is populated the way the arena example does it: a Screen,
// a Scoreboard, a Session, and one Player per configured name. The session is
// started and a HUD is bound, so an applied patch is visible in the bound
// display elements as well as in the report.
//
// Flags:
//
//   - -apply: YAML patch decoded onto live models before the report is taken.
//   - -clear: reset the registry before the report is taken; the report then
//     carries the "start the application" info message.
//   - -out: write the report to a file instead of stdout. The file is written
//     atomically (temp file + rename).
//
// Settings come from internal/config (MVC_LOG_LEVEL, MVC_LOG_FORMAT,
// MVC_LAZY_GET, MVC_ARENA_PLAYERS, MVC_CONFIG). Logs go to stderr.
//
// Exit codes: 0 success, 1 runtime failure, 2 usage error.
package main
