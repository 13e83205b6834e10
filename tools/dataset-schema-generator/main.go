// dataset-schema-generator writes the JSON Schema for the case-study dataset
// next to the dataset so editors can validate it while it is being edited.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/grovetools/caseinspect/pkg/casestudy"
)

func main() {
	output := flag.String("o", "case_studies.schema.json", "output path")
	flag.Parse()

	data, err := casestudy.SchemaJSON()
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	if err := os.WriteFile(*output, data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated dataset schema at %s", *output)
}
