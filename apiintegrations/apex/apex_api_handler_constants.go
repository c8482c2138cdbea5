package apex

// Header names and URL markers used when calling the Apex REST API.
const (
	APIName = "salesforce apex" // APIName: represents the name of the API.

	HeaderAppUUID   = "x-app-uuid"   // HeaderAppUUID: identifies the calling application.
	HeaderAPIKey    = "x-api-key"    // HeaderAPIKey: the application key issued with the app uuid.
	HeaderUserEmail = "x-user-email" // HeaderUserEmail: the end user on whose behalf the call is made.

	ContentTypeJSON = "application/json"

	// mTLS traffic is routed by port. The first ".com" of the base URI gets this port appended.
	tlsHostMarker    = ".com"
	tlsHostWithPort  = ".com:8443"
	absoluteHTTP     = "http://"
	absoluteHTTPS    = "https://"
	querySeparator   = "?"
	fragmentSplitter = "#"
)
