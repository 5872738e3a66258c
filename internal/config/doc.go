// Package config loads viewcore configuration.
//
// The configuration is stored in viewcore.json, or viewcore.yaml, at the
// project root. This package handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "name": "todo",
//	  "driver": {
//	    "queueSize": 256,
//	    "debugAssertions": true,
//	    "trace": false
//	  },
//	  "metrics": {
//	    "namespace": "viewcore",
//	    "subsystem": "driver"
//	  },
//	  "inspect": {
//	    "host": "localhost",
//	    "port": 7070,
//	    "snapshotDir": ".viewcore/snapshots",
//	    "s3": {
//	      "bucket": "my-snapshots",
//	      "prefix": "dev/",
//	      "region": "us-east-1"
//	    }
//	  }
//	}
//
// The YAML file uses the same keys.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Inspector:", cfg.Address())
package config
