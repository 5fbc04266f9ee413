// Command entityschema edits versioned, multilingual entity schemas.
package main

import "github.com/mesh-intelligence/entityschema/internal/cli"

func main() {
	cli.Execute()
}
