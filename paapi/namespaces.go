package paapi

import "github.com/lgc202/go-paapi/xmlview"

const (
	// ServiceNamespace is the default namespace of response envelopes.
	ServiceNamespace = "http://webservices.amazon.com/AWSECommerceService/2011-08-01"

	// ErrorNamespace is the default namespace of bare error envelopes.
	ErrorNamespace = "http://ecs.amazonaws.com/doc/2005-10-05/"
)

// Namespaces is the prefix mapping shared by response views.
var Namespaces = xmlview.Namespaces{"a": ServiceNamespace}

// ErrorNamespaces is the prefix mapping used by ErrorResponse.
var ErrorNamespaces = xmlview.Namespaces{"a": ErrorNamespace}
