// Package config provides configuration parsing for vdom tools.
//
// The configuration is stored in vdom.json (or vdom.toml) at the project
// root. Missing fields take their defaults.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "addr": "localhost:7070",
//	    "container": "body",
//	    "initial": "trees/home.yaml"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vdom",
//	    "path": "/metrics"
//	  },
//	  "tracing": {"tracerName": "github.com/vango-dev/vdom/reconcile"},
//	  "archive": {
//	    "bucket": "vdom-journal",
//	    "prefix": "sessions/",
//	    "region": "us-east-1"
//	  },
//	  "log": {"level": "info", "format": "text"}
//	}
//
// The same settings in TOML:
//
//	[server]
//	addr = "localhost:7070"
//
//	[archive]
//	bucket = "vdom-journal"
//	region = "us-east-1"
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Server.Addr)
package config
