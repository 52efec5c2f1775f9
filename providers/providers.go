// Package providers registers all bundled LLM providers.
// Import this package to make them available via provider.New():
//
//	import _ "github.com/randalmurphal/llmconnect/providers"
package providers

import (
	_ "github.com/randalmurphal/llmconnect/ollama"
)
