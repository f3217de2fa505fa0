// Package tdtengine translates EPC (Electronic Product Code) identifiers
// between the representations of a single coding scheme — BINARY,
// TAG_ENCODING, PURE_IDENTITY, LEGACY, LEGACY_AI, and ONS_HOSTNAME —
// entirely from declaratively loaded scheme markup. It implements
// nothing scheme-specific itself: every identifier family (SGTIN,
// SSCC, GRAI, ...) is supplied at runtime as EPCglobal TDT XML, loaded
// by an Engine and held immutable until the next Refresh.
//
// Construct an Engine with New, then call Translate or the convenience
// string-based TranslateStrings:
//
//	e, err := tdtengine.New(
//		tdtengine.DirLoader{Dir: "schemes"},
//		tdtengine.FileTableLoader{Path: "ManagerTranslation.xml"},
//	)
//	out, err := e.Translate("urn:epc:id:sgtin:0037000.030241.1041970", tdtengine.Hints{"filter": "3"}, tdtengine.Binary)
package tdtengine
