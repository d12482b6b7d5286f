// ABOUTME: Build identity strings for the bridge
// ABOUTME: Reported in logs and the mDNS service name
package version

// Product is the product name reported by the bridge.
const Product = "Bridgecast Bridge"

// Manufacturer is the project name.
const Manufacturer = "Bridgecast"

// Version is the software version.
const Version = "0.3.0"
