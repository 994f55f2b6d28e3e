// Package config handles configuration loading for nexus-chat.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults; running with no
// config file at all works out of the box against a local backend.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from NEXUS_CHAT_CONFIG environment variable
//  2. ./config.yaml (current directory)
//  3. $XDG_CONFIG_HOME/nexus-chat/config.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	api:
//	  base_url: "${NEXUS_API_URL}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Backend endpoint:
//
//	api:
//	  base_url: "http://localhost:8000"
//
// Conversation storage:
//
//	storage:
//	  path: "~/.local/share/nexus-chat/chat.db"
//
// Fallback location for hospital search and emergency dispatch:
//
//	location:
//	  latitude: 12.9716
//	  longitude: 77.5946
//	  timeout: "10s"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// Display:
//
//	reveal:
//	  enabled: true   # word-by-word display of bot replies
package config
