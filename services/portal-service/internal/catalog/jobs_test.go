package catalog

import "testing"

func TestJobs(t *testing.T) {
	jobs := Jobs()
	if len(jobs) != 8 {
		t.Fatalf("len(Jobs()) = %d, want 8", len(jobs))
	}

	seen := map[string]bool{}
	for _, job := range jobs {
		if job.ID == "" || job.Title == "" || job.Company == "" || job.Type == "" {
			t.Errorf("incomplete posting %+v", job)
		}
		if seen[job.ID] {
			t.Errorf("duplicate id %q", job.ID)
		}
		seen[job.ID] = true
	}

	jobs[0].Title = "changed"
	if Jobs()[0].Title != "Marketing Manager" {
		t.Error("Jobs() exposes the backing slice")
	}
}
