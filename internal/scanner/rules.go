package scanner

// This file declares the rule IDs the engine supports. Python-side rules
// keep pylint-style symbolic names since downstream tooling suppresses
// findings by these exact strings.

const (
	// boto3 client/resource construction
	RuleS3GlobalEndpointID = "s3-with-global-endpoint"
)
