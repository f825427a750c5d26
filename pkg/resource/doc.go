/*
Package resource provides localized string tables for template rendering.

A Store loads one YAML file per locale from a directory (en.yaml, de.yaml,
en-GB.yaml, ...) and answers key lookups for a requested locale, matching it
against the loaded locales with language fallback (en-AU falls back to en).
Nested YAML mappings are flattened into dot-separated keys, so a template can
reference {{@checkout.title}} against:

	checkout:
	  title: Checkout

The Store satisfies the template engine's Resources interface and can watch
its directory for changes, reloading bundles without a restart.
*/
package resource
