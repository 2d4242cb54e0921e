// Package config provides configuration parsing for the measure CLI.
//
// The configuration is stored in measure.json. This package handles
// loading, saving, and validating configuration. Durations are strings
// ("50ms") or millisecond counts.
//
// # Configuration File Structure
//
//	{
//	  "measure": {
//	    "debounce": {"resize": "100ms", "scroll": "16ms"},
//	    "scroll": true,
//	    "offsetSize": false,
//	    "transition": {"duration": "200ms", "ease": "easeOut"}
//	  },
//	  "serve": {
//	    "host": "localhost",
//	    "port": 7070,
//	    "stepInterval": "250ms"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "log": {"level": "debug", "format": "text"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := measure.Use(host, cfg.MeasureOptions()...)
package config
