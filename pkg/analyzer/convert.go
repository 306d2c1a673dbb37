package analyzer

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/openfroyo/froyo-analyzer/pkg/rpc/pulumirpc"
)

// ResourceFromProto converts a wire resource into the domain model. A
// delete-before-replace value sent without its defined flag decodes as unset.
func ResourceFromProto(pb *pulumirpc.AnalyzerResource) (*Resource, error) {
	if pb == nil {
		return nil, NewInvalidError("resource is nil", nil)
	}

	res := &Resource{
		Type:         pb.GetType(),
		Properties:   structToMap(pb.GetProperties()),
		URN:          pb.GetUrn(),
		Name:         pb.GetName(),
		Options:      optionsFromProto(pb.GetOptions()),
		Provider:     providerFromProto(pb.GetProvider()),
		Parent:       pb.GetParent(),
		Dependencies: copyStrings(pb.GetDependencies()),
	}

	if deps := pb.GetPropertyDependencies(); len(deps) > 0 {
		res.PropertyDependencies = make(map[string][]string, len(deps))
		for key, pd := range deps {
			res.PropertyDependencies[key] = copyStrings(pd.GetUrns())
		}
	}

	return res, nil
}

// ResourceFromAnalyzeRequest converts a single-resource Analyze request. The
// request carries no parent or dependency context.
func ResourceFromAnalyzeRequest(req *pulumirpc.AnalyzeRequest) (*Resource, error) {
	if req == nil {
		return nil, NewInvalidError("request is nil", nil)
	}

	return &Resource{
		Type:       req.GetType(),
		Properties: structToMap(req.GetProperties()),
		URN:        req.GetUrn(),
		Name:       req.GetName(),
		Options:    optionsFromProto(req.GetOptions()),
		Provider:   providerFromProto(req.GetProvider()),
	}, nil
}

// ResourceToProto converts a domain resource to its wire form.
func ResourceToProto(r *Resource) (*pulumirpc.AnalyzerResource, error) {
	props, err := mapToStruct(r.Properties)
	if err != nil {
		return nil, NewInvalidError("invalid properties", err).WithURN(r.URN).WithField("properties")
	}
	provider, err := providerToProto(r.Provider)
	if err != nil {
		return nil, NewInvalidError("invalid provider properties", err).WithURN(r.URN).WithField("provider")
	}

	pb := &pulumirpc.AnalyzerResource{
		Type:         r.Type,
		Properties:   props,
		Urn:          r.URN,
		Name:         r.Name,
		Options:      optionsToProto(r.Options),
		Provider:     provider,
		Parent:       r.Parent,
		Dependencies: copyStrings(r.Dependencies),
	}

	if len(r.PropertyDependencies) > 0 {
		pb.PropertyDependencies = make(map[string]*pulumirpc.AnalyzerPropertyDependencies, len(r.PropertyDependencies))
		for key, urns := range r.PropertyDependencies {
			pb.PropertyDependencies[key] = &pulumirpc.AnalyzerPropertyDependencies{Urns: copyStrings(urns)}
		}
	}

	return pb, nil
}

// ResourceToAnalyzeRequest converts a domain resource into a single-resource
// Analyze request, dropping the graph context the request cannot carry.
func ResourceToAnalyzeRequest(r *Resource) (*pulumirpc.AnalyzeRequest, error) {
	pb, err := ResourceToProto(r)
	if err != nil {
		return nil, err
	}
	return &pulumirpc.AnalyzeRequest{
		Type:       pb.Type,
		Properties: pb.Properties,
		Urn:        pb.Urn,
		Name:       pb.Name,
		Options:    pb.Options,
		Provider:   pb.Provider,
	}, nil
}

// ResourcesFromProto converts an AnalyzeStack resource list, preserving order.
func ResourcesFromProto(pbs []*pulumirpc.AnalyzerResource) ([]Resource, error) {
	out := make([]Resource, 0, len(pbs))
	for i, pb := range pbs {
		r, err := ResourceFromProto(pb)
		if err != nil {
			return nil, fmt.Errorf("resources[%d]: %w", i, err)
		}
		out = append(out, *r)
	}
	return out, nil
}

// ResourcesToProto converts a resource list for AnalyzeStack, preserving order.
func ResourcesToProto(resources []Resource) ([]*pulumirpc.AnalyzerResource, error) {
	out := make([]*pulumirpc.AnalyzerResource, 0, len(resources))
	for i := range resources {
		pb, err := ResourceToProto(&resources[i])
		if err != nil {
			return nil, fmt.Errorf("resources[%d]: %w", i, err)
		}
		out = append(out, pb)
	}
	return out, nil
}

func optionsFromProto(pb *pulumirpc.AnalyzerResourceOptions) *ResourceOptions {
	if pb == nil {
		return nil
	}

	opts := &ResourceOptions{
		Protect:                 pb.GetProtect(),
		IgnoreChanges:           copyStrings(pb.GetIgnoreChanges()),
		AdditionalSecretOutputs: copyStrings(pb.GetAdditionalSecretOutputs()),
		Aliases:                 copyStrings(pb.GetAliases()),
	}

	if pb.GetDeleteBeforeReplaceDefined() {
		v := pb.GetDeleteBeforeReplace()
		opts.DeleteBeforeReplace = &v
	}

	if ct := pb.GetCustomTimeouts(); ct != nil {
		opts.CustomTimeouts = &CustomTimeouts{
			Create: ct.GetCreate(),
			Update: ct.GetUpdate(),
			Delete: ct.GetDelete(),
		}
	}

	return opts
}

// undefinedDeleteBeforeReplace reports a delete-before-replace value that
// optionsFromProto drops because its defined flag is false.
func undefinedDeleteBeforeReplace(pb *pulumirpc.AnalyzerResourceOptions) bool {
	return pb.GetDeleteBeforeReplace() && !pb.GetDeleteBeforeReplaceDefined()
}

func optionsToProto(opts *ResourceOptions) *pulumirpc.AnalyzerResourceOptions {
	if opts == nil {
		return nil
	}

	pb := &pulumirpc.AnalyzerResourceOptions{
		Protect:                 opts.Protect,
		IgnoreChanges:           copyStrings(opts.IgnoreChanges),
		AdditionalSecretOutputs: copyStrings(opts.AdditionalSecretOutputs),
		Aliases:                 copyStrings(opts.Aliases),
	}

	// An unset value always encodes as defined=false.
	if opts.DeleteBeforeReplace != nil {
		pb.DeleteBeforeReplaceDefined = true
		pb.DeleteBeforeReplace = *opts.DeleteBeforeReplace
	}

	if ct := opts.CustomTimeouts; ct != nil {
		pb.CustomTimeouts = &pulumirpc.AnalyzerResourceOptions_CustomTimeouts{
			Create: ct.Create,
			Update: ct.Update,
			Delete: ct.Delete,
		}
	}

	return pb
}

func providerFromProto(pb *pulumirpc.AnalyzerProviderResource) *ProviderResource {
	if pb == nil {
		return nil
	}
	return &ProviderResource{
		Type:       pb.GetType(),
		Properties: structToMap(pb.GetProperties()),
		URN:        pb.GetUrn(),
		Name:       pb.GetName(),
	}
}

func providerToProto(p *ProviderResource) (*pulumirpc.AnalyzerProviderResource, error) {
	if p == nil {
		return nil, nil
	}
	props, err := mapToStruct(p.Properties)
	if err != nil {
		return nil, err
	}
	return &pulumirpc.AnalyzerProviderResource{
		Type:       p.Type,
		Properties: props,
		Urn:        p.URN,
		Name:       p.Name,
	}, nil
}

// DiagnosticsToProto converts diagnostics to wire form, preserving order.
func DiagnosticsToProto(diags []Diagnostic) []*pulumirpc.AnalyzeDiagnostic {
	out := make([]*pulumirpc.AnalyzeDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		out = append(out, &pulumirpc.AnalyzeDiagnostic{
			PolicyName:        d.PolicyName,
			PolicyPackName:    d.PolicyPackName,
			PolicyPackVersion: d.PolicyPackVersion,
			Description:       d.Description,
			Message:           d.Message,
			Tags:              copyStrings(d.Tags),
			EnforcementLevel:  EnforcementLevelToProto(d.EnforcementLevel),
			Urn:               d.URN,
		})
	}
	return out
}

// DiagnosticsFromProto converts wire diagnostics, preserving order.
func DiagnosticsFromProto(pbs []*pulumirpc.AnalyzeDiagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(pbs))
	for _, pb := range pbs {
		out = append(out, Diagnostic{
			PolicyName:        pb.GetPolicyName(),
			PolicyPackName:    pb.GetPolicyPackName(),
			PolicyPackVersion: pb.GetPolicyPackVersion(),
			Description:       pb.GetDescription(),
			Message:           pb.GetMessage(),
			Tags:              copyStrings(pb.GetTags()),
			EnforcementLevel:  EnforcementLevelFromProto(pb.GetEnforcementLevel()),
			URN:               pb.GetUrn(),
		})
	}
	return out
}

// AnalyzerInfoToProto converts analyzer metadata, preserving policy order.
func AnalyzerInfoToProto(info *AnalyzerInfo) *pulumirpc.AnalyzerInfo {
	pb := &pulumirpc.AnalyzerInfo{
		Name:        info.Name,
		DisplayName: info.DisplayName,
		Version:     info.Version,
		Policies:    make([]*pulumirpc.PolicyInfo, 0, len(info.Policies)),
	}
	for _, p := range info.Policies {
		pb.Policies = append(pb.Policies, &pulumirpc.PolicyInfo{
			Name:             p.Name,
			DisplayName:      p.DisplayName,
			Description:      p.Description,
			Message:          p.Message,
			EnforcementLevel: EnforcementLevelToProto(p.EnforcementLevel),
		})
	}
	return pb
}

// AnalyzerInfoFromProto converts wire analyzer metadata.
func AnalyzerInfoFromProto(pb *pulumirpc.AnalyzerInfo) *AnalyzerInfo {
	info := &AnalyzerInfo{
		Name:        pb.GetName(),
		DisplayName: pb.GetDisplayName(),
		Version:     pb.GetVersion(),
		Policies:    make([]PolicyInfo, 0, len(pb.GetPolicies())),
	}
	for _, p := range pb.GetPolicies() {
		info.Policies = append(info.Policies, PolicyInfo{
			Name:             p.GetName(),
			DisplayName:      p.GetDisplayName(),
			Description:      p.GetDescription(),
			Message:          p.GetMessage(),
			EnforcementLevel: EnforcementLevelFromProto(p.GetEnforcementLevel()),
		})
	}
	return info
}

// EnforcementLevelToProto maps a domain level onto the wire enum. Unknown
// levels map to ADVISORY.
func EnforcementLevelToProto(l EnforcementLevel) pulumirpc.EnforcementLevel {
	if l == EnforcementMandatory {
		return pulumirpc.EnforcementLevel_MANDATORY
	}
	return pulumirpc.EnforcementLevel_ADVISORY
}

// EnforcementLevelFromProto maps the wire enum onto a domain level.
func EnforcementLevelFromProto(l pulumirpc.EnforcementLevel) EnforcementLevel {
	if l == pulumirpc.EnforcementLevel_MANDATORY {
		return EnforcementMandatory
	}
	return EnforcementAdvisory
}

func structToMap(s *structpb.Struct) map[string]interface{} {
	if s == nil {
		return nil
	}
	return s.AsMap()
}

func mapToStruct(m map[string]interface{}) (*structpb.Struct, error) {
	if m == nil {
		return nil, nil
	}
	return structpb.NewStruct(m)
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
