// Package emit maps resolved policies to declaration records and renders
// them.
//
// Declare is a pure field mapping. A re-exported entry keeps its module
// declaration private and carries the visibility on the re-export instead.
//
// The renderers are inspection surfaces for the records; none of them is a
// stable on-disk format:
//
//	text  one line per record, close to the declarations a host would write
//	json  encoding/json, indented
//	yaml  gopkg.in/yaml.v3
//	toml  github.com/pelletier/go-toml/v2
//	xml   github.com/beevik/etree
package emit
