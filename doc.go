// Package main provides the entry point of GoSecureSettings.
// It keeps a handful of user settings (name, theme, language, notification
// volume) in an encrypted key-value namespace on top of sqlite, mysql or
// postgres, serves a one-screen fiber form that writes every edit straight
// through to the store, and accounts the time spent in each session.
package main
