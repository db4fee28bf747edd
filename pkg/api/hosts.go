package api

import "sort"

// Hosts used by the product advertising service, one per locale.
var hosts = map[string]string{
	"ca": "ecs.amazonaws.ca",
	"cn": "webservices.amazon.cn",
	"de": "ecs.amazonaws.de",
	"es": "webservices.amazon.es",
	"fr": "ecs.amazonaws.fr",
	"it": "webservices.amazon.it",
	"jp": "ecs.amazonaws.jp",
	"uk": "ecs.amazonaws.co.uk",
	"us": "ecs.amazonaws.com",
}

// Locales lists the locale codes the client accepts.
func Locales() []string {
	codes := make([]string, 0, len(hosts))
	for code := range hosts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
