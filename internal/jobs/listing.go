// Package jobs holds the view-model logic of the job board: the public
// listing filter/sort pipeline, the moderation operations, and the posting
// form controller. Everything here works over transient in-memory copies of
// the jobs collection; the store remains the owner of persistent state.
package jobs

import (
	"sort"
	"strings"

	"jobi-server/pkg/models"
)

// Sort keys accepted by the public listing
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortCompany = "company"
	SortTitle   = "title"
)

// Filters is the filter and sort state of the public listing. Empty criteria
// match everything.
type Filters struct {
	SearchTerm string
	Location   string
	JobType    string
	Salary     string
	SortBy     string
}

// FilterAndSort produces the ordered display list for the given approved job
// set and filter state. A job is included iff every active predicate matches.
// The transform is pure; the input slice is not modified.
func FilterAndSort(in []models.Job, f Filters) []models.Job {
	out := make([]models.Job, 0, len(in))
	for _, job := range in {
		if matchesFilters(job, f) {
			out = append(out, job)
		}
	}

	sortJobs(out, f.SortBy)
	return out
}

func matchesFilters(job models.Job, f Filters) bool {
	if term := strings.ToLower(f.SearchTerm); term != "" {
		if !strings.Contains(strings.ToLower(job.Title), term) &&
			!strings.Contains(strings.ToLower(job.Company), term) &&
			!strings.Contains(strings.ToLower(job.Description), term) {
			return false
		}
	}

	if loc := strings.ToLower(f.Location); loc != "" {
		if !strings.Contains(strings.ToLower(job.Location), loc) {
			return false
		}
	}

	if f.JobType != "" && string(job.Type) != f.JobType {
		return false
	}

	// The salary filter only has one meaningful value; anything else matches all
	if f.Salary == "negotiable" {
		if !strings.Contains(strings.ToLower(job.Salary), "negotiable") {
			return false
		}
	}

	return true
}

// sortJobs orders the list in place by the selected key. The sort is stable
// so equal keys keep their fetched order. Missing timestamps sort as zero.
func sortJobs(list []models.Job, sortBy string) {
	switch sortBy {
	case SortOldest:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
	case SortCompany:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Company < list[j].Company
		})
	case SortTitle:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Title < list[j].Title
		})
	default: // newest
		sort.SliceStable(list, func(i, j int) bool {
			return list[j].CreatedAt.Before(list[i].CreatedAt)
		})
	}
}

// Facets returns the distinct locations and job types present in the job
// set, in first-seen order, for building filter dropdowns
func Facets(in []models.Job) (locations []string, jobTypes []string) {
	seenLoc := make(map[string]bool)
	seenType := make(map[string]bool)

	locations = []string{}
	jobTypes = []string{}

	for _, job := range in {
		if job.Location != "" && !seenLoc[job.Location] {
			seenLoc[job.Location] = true
			locations = append(locations, job.Location)
		}
		if job.Type != "" && !seenType[string(job.Type)] {
			seenType[string(job.Type)] = true
			jobTypes = append(jobTypes, string(job.Type))
		}
	}

	return locations, jobTypes
}
