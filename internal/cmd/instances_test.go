package cmd

import (
	"strings"
	"testing"
)

func TestInstancesListsKnownDeployments(t *testing.T) {
	output, err := execute(t, "instances")
	if err != nil {
		t.Fatalf("instances failed: %v", err)
	}

	if !strings.Contains(output, "NAME") || !strings.Contains(output, "API") {
		t.Errorf("Expected the table header, got: %s", output)
	}
	for _, want := range []string{
		"dandi-staging",
		"https://dandiarchive.org",
		"https://api.dandiarchive.org/api",
		"dandi-api-local-docker-tests",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestInstancesSortedByName(t *testing.T) {
	output, err := execute(t, "instances")
	if err != nil {
		t.Fatalf("instances failed: %v", err)
	}

	first := strings.Index(output, "dandi ")
	second := strings.Index(output, "dandi-api-local-docker-tests")
	third := strings.Index(output, "dandi-staging")
	if first == -1 || second == -1 || third == -1 {
		t.Fatalf("Expected all three instances, got: %s", output)
	}
	if !(first < second && second < third) {
		t.Errorf("Expected instances sorted by name, got: %s", output)
	}
}
