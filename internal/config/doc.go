// Package config provides configuration loading, merging, and validation
// for the forkeys client and registry server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON or YAML config file (path from CONFIG or -c)
//  3. Environment variables, optionally seeded from a .env file
//  4. Command-line flags
//
// The entry points are [GetClientConfig] and [GetServerConfig]; each returns
// a validated view holding only the fields its binary needs.
package config
