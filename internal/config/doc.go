// Package config provides centralized configuration management for the
// excel-client tools. It handles loading configuration from multiple
// sources, validation, and a type-safe API for the rest of the
// application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern EXCEL_* for namespacing:
//
//	EXCEL_WORKBOOK_FILE=data/inventory.xlsx
//	EXCEL_WORKBOOK_SHEET=Sheet1
//	EXCEL_WORKBOOK_HEADER_ROW=true
//	EXCEL_LOGGING_LEVEL=info
//	EXCEL_LOGGING_OUTPUT=both
//
// # Validation
//
// All configuration is validated at load time to ensure:
//
//	- Required fields are present
//	- Enum values are within their accepted sets
//	- The worksheet name is legal for the file format
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
