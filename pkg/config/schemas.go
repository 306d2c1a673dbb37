package config

// configSchema constrains and defaults a service configuration. User files
// are unified with #Config, so unknown fields are rejected.
const configSchema = `
#Duration: =~"^([0-9]+(\\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$"

#EnforcementLevel: "advisory" | "mandatory"

#Override: {
	disabled?:         bool
	enforcementLevel?: #EnforcementLevel
	config?: {...}
}

#Config: {
	analyzer: {
		name:        string & !="" | *"froyo-analyzer"
		displayName: string | *"Froyo policy analyzer"
		version:     string | *""
	}

	server: {
		host:            string | *"127.0.0.1"
		port:            *0 | (int & >=0 & <=65535)
		shutdownTimeout: #Duration | *"10s"
	}

	policy: {
		packs:          [...string] | *[]
		watch:          bool | *false
		disableBuiltin: bool | *false
		evalTimeout:    #Duration | *"5s"
		maxSteps:       *10000000 | (int & >=0)
		parallelism:    *4 | (int & >=1 & <=64)
		overrides: [string]: #Override
	}

	store: {
		driver:      *"none" | "sqlite" | "postgres"
		dsn:         string | *""
		recordFatal: bool | *false
	}

	telemetry: {
		environment: string | *"development"
		logLevel:    *"info" | "trace" | "debug" | "warn" | "error"
		logFormat:   *"console" | "json"
		tracing: {
			enabled:    bool | *false
			exporter:   *"none" | "stdout" | "otlp"
			endpoint:   string | *""
			sampleRate: *1.0 | (number & >=0 & <=1)
		}
		metrics: {
			enabled: bool | *false
			address: string | *":9464"
		}
		events: {
			enabled: bool | *true
		}
	}
}
`
