// Package config loads, normalizes, and validates collectarr configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// RADARR_URL, RADARR_API_KEY, TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID and
// NTFY_TOPIC. The media server URL, its API key, and at least one
// notification target are required and have no defaults; a missing value is a
// startup error reported before any request is made.
package config
