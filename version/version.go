// version.go
package version

import "fmt"

// AppName holds the name of the application
var AppName = "salesforce-apex-client"

// Version holds the current version of the application
var Version = "0.3.0"

// UserAgentBase is the product token sent in the User-Agent header
const UserAgentBase = "salesforce-apex-client-go"

// SDKVersion is the version reported in the User-Agent header
var SDKVersion = Version

// GetAppName returns the name of the application
func GetAppName() string {
	return AppName
}

// GetVersion returns the current version of the application
func GetVersion() string {
	return Version
}

// GetUserAgentHeader returns the User-Agent value sent with every request.
func GetUserAgentHeader() string {
	return fmt.Sprintf("%s/%s", UserAgentBase, SDKVersion)
}
