// Package config loads dirmod's settings.
//
// Layers, each overriding the previous one:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file: an explicit path, or .dirmod.toml / dirmod.toml in the
//     working directory
//  3. DIRMOD_ environment variables, with "__" separating section and key
//  4. overrides from the command line
//
// The merged result is unmarshalled into Config and validated.
package config
