// Package confloader loads editor configuration via koanf.
//
// Sources, later overriding earlier:
//
//  1. Defaults supplied by the caller
//  2. YAML configuration file
//  3. TEXTER_* environment variables
//  4. Command-line flag overrides (loaded as a map)
//
// A fsnotify-based watcher supports hot reload of the config file;
// the entrypoint uses it to apply log level and autosave interval
// changes without restarting the editor.
package confloader
