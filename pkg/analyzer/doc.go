// Package analyzer implements the Analyzer policy protocol on top of the
// generated pulumirpc bindings.
//
// It holds the domain model (Resource, Diagnostic, AnalyzerInfo), conversion
// to and from the wire messages, input validation, the ResourceGraph used by
// stack policies, the gRPC Server and a Client.
//
// # Failure semantics
//
// Malformed input fails the call with InvalidArgument: a missing urn, a
// duplicate urn within a stack, propertyDependencies keys that are not
// properties, or deleteBeforeReplace set without deleteBeforeReplaceDefined.
// Policy evaluation problems are reported as diagnostics by the Evaluator and
// never become transport errors. Panics and fatal recorder failures map to
// Internal.
//
// # Serving
//
//	engine, _ := policy.NewEngine(logger, policy.EngineConfig{})
//	srv := analyzer.NewServer(engine, logger, analyzer.ServerConfig{Version: "0.1.0"})
//	lis, _ := net.Listen("tcp", "127.0.0.1:0")
//	fmt.Println(lis.Addr().(*net.TCPAddr).Port)
//	err := srv.Serve(ctx, lis)
package analyzer
