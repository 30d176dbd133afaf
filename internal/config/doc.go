// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// Historic source URLs carry a {year} placeholder that is filled per request.
package config
