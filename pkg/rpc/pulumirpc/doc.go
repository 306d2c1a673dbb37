// Package pulumirpc holds the wire bindings for the Pulumi Analyzer plugin
// protocol. The files in this package are generated from proto/.
package pulumirpc

//go:generate protoc -I ../../../proto --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative analyzer.proto plugin.proto
