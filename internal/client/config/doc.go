// Package config loads runtime configuration for the studio binaries.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, if present.
//  3. BLUEPRINT_* environment variables, e.g. BLUEPRINT_BACKEND_ADDR,
//     BLUEPRINT_ONLINE_CHECK_INTERVAL=5s, BLUEPRINT_BLOB_BUCKET.
//  4. A JSON or YAML file selected with -c or -config:
//
//	{
//	  "backend_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "database_path": "studio.db",
//	  "blob": {"endpoint": "http://127.0.0.1:9000", "bucket": "studio"}
//	}
//
//  5. Flags: -a backend address, -i online check interval (seconds),
//     -d database path, -l log level, -b bridge address.
package config
