package taggle

// Feature URIs recognised by GetFeature/SetFeature. The standard SAX2
// URIs (under http://xml.org/sax/features/) are accepted for
// compatibility but most have no effect, since this parser never
// validates, never fetches external entities, and always interns
// nothing differently from ordinary Go strings; the tagsoup/features
// URIs (under http://www.ccil.org/~cowan/tagsoup/features/) are the
// ones that actually change parsing behaviour.
const (
	FeatureNamespaces                   = "http://xml.org/sax/features/namespaces"
	FeatureNamespacePrefixes            = "http://xml.org/sax/features/namespace-prefixes"
	FeatureExternalGeneralEntities      = "http://xml.org/sax/features/external-general-entities"
	FeatureExternalParameterEntities    = "http://xml.org/sax/features/external-parameter-entities"
	FeatureIsStandalone                 = "http://xml.org/sax/features/is-standalone"
	FeatureLexicalHandlerParamEntities  = "http://xml.org/sax/features/lexical-handler/parameter-entities"
	FeatureResolveDTDURIs               = "http://xml.org/sax/features/resolve-dtd-uris"
	FeatureStringInterning              = "http://xml.org/sax/features/string-interning"
	FeatureUseAttributes2               = "http://xml.org/sax/features/use-attributes2"
	FeatureUseLocator2                  = "http://xml.org/sax/features/use-locator2"
	FeatureUseEntityResolver2           = "http://xml.org/sax/features/use-entity-resolver2"
	FeatureValidation                   = "http://xml.org/sax/features/validation"
	FeatureUnicodeNormalizationChecking = "http://xml.org/sax/features/unicode-normalization-checking"
	FeatureXMLNSURIs                    = "http://xml.org/sax/features/xmlns-uris"
	FeatureXML11                        = "http://xml.org/sax/features/xml-1.1"

	FeatureIgnoreBogons         = "http://www.ccil.org/~cowan/tagsoup/features/ignore-bogons"
	FeatureBogonsEmpty          = "http://www.ccil.org/~cowan/tagsoup/features/bogons-empty"
	FeatureRootBogons           = "http://www.ccil.org/~cowan/tagsoup/features/root-bogons"
	FeatureDefaultAttributes    = "http://www.ccil.org/~cowan/tagsoup/features/default-attributes"
	FeatureTranslateColons      = "http://www.ccil.org/~cowan/tagsoup/features/translate-colons"
	FeatureRestartElements      = "http://www.ccil.org/~cowan/tagsoup/features/restart-elements"
	FeatureIgnorableWhitespace  = "http://www.ccil.org/~cowan/tagsoup/features/ignorable-whitespace"
	FeatureCDATAElements        = "http://www.ccil.org/~cowan/tagsoup/features/cdata-elements"
)

// Default values for the features that actually affect parsing
// behaviour; every other recognised feature defaults to false except
// resolve-dtd-uris and string-interning, which initialFeatures sets to
// true.
const (
	defaultNamespaces          = true
	defaultIgnoreBogons        = false
	defaultBogonsEmpty         = false
	defaultRootBogons          = true
	defaultDefaultAttributes   = true
	defaultTranslateColons     = false
	defaultRestartElements     = true
	defaultIgnorableWhitespace = false
	defaultCDATAElements       = true
)

func initialFeatures() map[string]bool {
	return map[string]bool{
		FeatureNamespaces:                   defaultNamespaces,
		FeatureNamespacePrefixes:            false,
		FeatureExternalGeneralEntities:      false,
		FeatureExternalParameterEntities:    false,
		FeatureIsStandalone:                 false,
		FeatureLexicalHandlerParamEntities:  false,
		FeatureResolveDTDURIs:               true,
		FeatureStringInterning:              true,
		FeatureUseAttributes2:               false,
		FeatureUseLocator2:                  false,
		FeatureUseEntityResolver2:           false,
		FeatureValidation:                   false,
		FeatureUnicodeNormalizationChecking: false,
		FeatureXMLNSURIs:                    false,
		FeatureXML11:                        false,
		FeatureIgnoreBogons:                 defaultIgnoreBogons,
		FeatureBogonsEmpty:                  defaultBogonsEmpty,
		FeatureRootBogons:                   defaultRootBogons,
		FeatureDefaultAttributes:            defaultDefaultAttributes,
		FeatureTranslateColons:              defaultTranslateColons,
		FeatureRestartElements:              defaultRestartElements,
		FeatureIgnorableWhitespace:          defaultIgnorableWhitespace,
		FeatureCDATAElements:                defaultCDATAElements,
	}
}
