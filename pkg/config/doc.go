// Package config loads the froyo-analyzer service configuration.
//
// Configuration is written in CUE. Every source is unified with an embedded
// #Config schema that supplies defaults and rejects unknown fields, then
// decoded into Config and checked with validator struct tags.
//
//	analyzer: name: "acme-policies"
//
//	server: port: 50051
//
//	policy: {
//		packs: ["./policies/aws", "./policies/k8s"]
//		watch: true
//		overrides: "required-tags": {
//			enforcementLevel: "mandatory"
//			config: tags: ["owner", "cost-center"]
//		}
//	}
//
//	store: {
//		driver: "sqlite"
//		dsn:    "/var/lib/froyo-analyzer/history.db"
//	}
//
// Several sources may be given; they are unified, so two sources that set
// the same field to different values are reported as a conflict.
//
// Errors are returned as *Error, which lists each problem with its file
// position where CUE provides one.
package config
