// Package config loads collectionkit configuration from files and the
// environment.
//
// It uses Viper to read a YAML/JSON/TOML file, godotenv to load an optional
// .env file, and binds environment variables onto nested keys so that
// COLLECTIONKIT_COLLECTION_LIMIT=8 overrides collection.limit.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("collectionkit", &cfg, config.WithConfigFile(path))
package config
