package scanner

import "github.com/amisstea/aws-client-audit/internal/pyast"

// s3-with-global-endpoint: boto3 S3 clients and resources must pin a
// region or endpoint; otherwise requests go to the legacy global S3
// endpoint. Flags boto3.client("s3") / boto3.resource("s3") (and the
// boto_session variants, including nested forms like
// session.boto_session.client("s3")) when neither region_name nor
// endpoint_url is passed with a non-empty value.
type ruleS3GlobalEndpoint struct{}

func NewRuleS3GlobalEndpoint() Rule { return &ruleS3GlobalEndpoint{} }

func (r *ruleS3GlobalEndpoint) ID() string { return RuleS3GlobalEndpointID }
func (r *ruleS3GlobalEndpoint) Description() string {
	return "boto3 S3 clients/resources should be constructed with region_name or endpoint_url"
}

// factoryOrigins are the identifiers recognized as boto3 client-factory
// sources: the boto3 module itself and the conventional session object
// name.
var factoryOrigins = map[string]struct{}{
	"boto3":        {},
	"boto_session": {},
}

// factoryMethods are the boto3 factory methods that construct a
// service-specific client or resource handle.
var factoryMethods = map[string]struct{}{
	"client":   {},
	"resource": {},
}

// maxChainDepth bounds the attribute chain walk. Lowered trees are
// acyclic by construction, so this is purely a hard stop.
const maxChainDepth = 64

func (r *ruleS3GlobalEndpoint) VisitCall(call *pyast.Call, report func(Issue)) {
	if call == nil || !isS3ClientOrResource(call) {
		return
	}
	for _, kw := range call.Keywords {
		if kw.Name != "region_name" && kw.Name != "endpoint_url" {
			continue
		}
		if pyast.IsTruthy(kw.Value) {
			return
		}
	}
	report(Issue{
		RuleID:      r.ID(),
		Title:       "S3 client or resource uses the global endpoint",
		Description: "S3 client or resource is instantiated without region_name or endpoint_url",
		Severity:    SeverityWarning,
		Position: Position{
			Filename: call.Position.Filename,
			Line:     call.Position.Line,
			Column:   call.Position.Column,
		},
		Suggestion: "Pass region_name or endpoint_url to the boto3 factory call",
	})
}

// isS3ClientOrResource reports whether call constructs an S3 client or
// resource via a recognized boto3 factory. The service must be named by
// a literal "s3" first positional argument; service names passed through
// variables or keywords are not detected.
func isS3ClientOrResource(call *pyast.Call) bool {
	attr, ok := call.Func.(*pyast.Attribute)
	if !ok {
		return false
	}
	if !isFactoryCall(attr) {
		return false
	}
	if len(call.Args) == 0 {
		return false
	}
	svc, ok := call.Args[0].(*pyast.StringLit)
	return ok && svc.Value == "s3"
}

// isFactoryCall matches the callee against the two recognized shapes:
// a factory-origin identifier used directly (boto3.client) or reached
// through a longer attribute chain (session.boto_session.client). In the
// chain walk each adjacent pair is checked: the inner attribute must
// name a factory origin while the outer one names a factory method.
func isFactoryCall(attr *pyast.Attribute) bool {
	if id, ok := attr.Value.(*pyast.Ident); ok {
		_, origin := factoryOrigins[id.Name]
		_, method := factoryMethods[attr.Attr]
		return origin && method
	}

	outer := attr
	for i := 0; i < maxChainDepth; i++ {
		inner, ok := outer.Value.(*pyast.Attribute)
		if !ok {
			return false
		}
		if _, origin := factoryOrigins[inner.Attr]; origin {
			if _, method := factoryMethods[outer.Attr]; method {
				return true
			}
		}
		outer = inner
	}
	return false
}
