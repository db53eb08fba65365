package config

import (
	"fmt"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithJWTSecret sets the HMAC secret used to verify dashboard tokens
func WithJWTSecret(secret string) Option {
	return func(c *ServerConfig) error {
		c.JWTSecret = secret
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithDatabaseSchema sets the database schema (for Postgres)
func WithDatabaseSchema(schema string) Option {
	return func(c *ServerConfig) error {
		c.DBSchema = schema
		return nil
	}
}

// WithDefaultMediaStore sets the default media store name
func WithDefaultMediaStore(name string) Option {
	return func(c *ServerConfig) error {
		if name == "" {
			return fmt.Errorf("default media store name cannot be empty")
		}
		c.DefaultMediaStore = name
		return nil
	}
}

// WithFilesystemStore adds a filesystem media store
// If name is empty, defaults to "fs"
func WithFilesystemStore(name, baseDir, urlPrefix string) Option {
	return func(c *ServerConfig) error {
		if name == "" {
			name = "fs"
		}
		if baseDir == "" {
			return fmt.Errorf("filesystem base directory cannot be empty")
		}

		store := MediaStoreConfig{
			Name: name,
			Type: "fs",
			Config: map[string]interface{}{
				"base_dir": baseDir,
			},
		}

		if urlPrefix != "" {
			store.Config["url_prefix"] = urlPrefix
		}

		c.MediaStores = upsertMediaStore(c.MediaStores, store)
		return nil
	}
}

// WithS3Store adds an S3 media store
// If name is empty, defaults to "s3"
func WithS3Store(name, bucket, region string) Option {
	return func(c *ServerConfig) error {
		if name == "" {
			name = "s3"
		}
		if bucket == "" {
			return fmt.Errorf("S3 bucket cannot be empty")
		}
		if region == "" {
			region = "us-east-1"
		}

		store := MediaStoreConfig{
			Name: name,
			Type: "s3",
			Config: map[string]interface{}{
				"bucket": bucket,
				"region": region,
			},
		}

		c.MediaStores = upsertMediaStore(c.MediaStores, store)
		return nil
	}
}

// WithS3Credentials sets AWS credentials for an S3 media store
func WithS3Credentials(name, accessKeyID, secretAccessKey string) Option {
	return func(c *ServerConfig) error {
		if name == "" {
			name = "s3"
		}

		for i := range c.MediaStores {
			if c.MediaStores[i].Name == name && c.MediaStores[i].Type == "s3" {
				c.MediaStores[i].Config["access_key_id"] = accessKeyID
				c.MediaStores[i].Config["secret_access_key"] = secretAccessKey
				return nil
			}
		}

		store := MediaStoreConfig{
			Name: name,
			Type: "s3",
			Config: map[string]interface{}{
				"access_key_id":     accessKeyID,
				"secret_access_key": secretAccessKey,
			},
		}
		c.MediaStores = append(c.MediaStores, store)
		return nil
	}
}

// WithS3Endpoint sets a custom S3 endpoint (for MinIO, LocalStack, etc.)
func WithS3Endpoint(name, endpoint string, usePathStyle bool) Option {
	return func(c *ServerConfig) error {
		if name == "" {
			name = "s3"
		}

		for i := range c.MediaStores {
			if c.MediaStores[i].Name == name && c.MediaStores[i].Type == "s3" {
				c.MediaStores[i].Config["endpoint"] = endpoint
				c.MediaStores[i].Config["use_path_style"] = usePathStyle
				return nil
			}
		}

		store := MediaStoreConfig{
			Name: name,
			Type: "s3",
			Config: map[string]interface{}{
				"endpoint":       endpoint,
				"use_path_style": usePathStyle,
			},
		}
		c.MediaStores = append(c.MediaStores, store)
		return nil
	}
}

// WithMemoryStore adds a memory media store (for testing)
// If name is empty, defaults to "memory"
func WithMemoryStore(name string) Option {
	return func(c *ServerConfig) error {
		if name == "" {
			name = "memory"
		}

		store := MediaStoreConfig{
			Name:   name,
			Type:   "memory",
			Config: map[string]interface{}{},
		}

		c.MediaStores = upsertMediaStore(c.MediaStores, store)
		return nil
	}
}

// WithEventLogging enables or disables event logging
func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}
