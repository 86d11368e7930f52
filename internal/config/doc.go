// Package config manages the YAML configuration file of the records editor.
//
// The file lives in the platform configuration directory:
//   - Linux: $XDG_CONFIG_HOME/records/config.yaml or $HOME/.config/records/config.yaml
//   - macOS: $HOME/.config/records/config.yaml
//   - Windows: %LOCALAPPDATA%\records\config.yaml
//
// RECORDS_CONFIG_DIR overrides the directory. A missing file yields Default().
package config
