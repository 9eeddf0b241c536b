package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

const maxDocumentSize = 1 << 20

// Document holds every resource that loaded successfully. A resource listed in
// Failures has a nil value here and its section is skipped.
type Document struct {
	Profile        *Profile
	Skills         []Skill
	Certifications []Certification
	Experience     []Role
	Education      []Education
	Leadership     []Role
	Projects       []Project

	Failures map[Resource]*Failure
}

// Loaded reports whether r was retrieved and parsed.
func (d *Document) Loaded(r Resource) bool {
	return d.Failures[r] == nil
}

// Load retrieves every resource concurrently. Each resource is isolated: a
// failure is logged and recorded without touching any other section.
func Load(ctx context.Context, src Source, logger *zap.Logger) *Document {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc := &Document{Failures: make(map[Resource]*Failure)}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, r := range Resources {
		wg.Add(1)

		go func(r Resource) {
			defer wg.Done()

			apply, failure := retrieve(ctx, src, r)

			mu.Lock()
			defer mu.Unlock()

			if failure != nil {
				doc.Failures[r] = failure
				logger.Warn("resource not loaded, skipping section",
					zap.String("resource", r.String()),
					zap.Stringer("kind", failure.Kind),
					zap.Error(failure.Err),
				)

				return
			}

			apply(doc)
		}(r)
	}

	wg.Wait()

	return doc
}

func retrieve(ctx context.Context, src Source, r Resource) (func(*Document), *Failure) {
	body, err := src.Open(ctx, r)
	if err != nil {
		return nil, &Failure{Resource: r, Kind: KindFetch, Err: err}
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, maxDocumentSize+1))
	if err != nil {
		return nil, &Failure{Resource: r, Kind: KindFetch, Err: err}
	}

	if len(raw) > maxDocumentSize {
		return nil, &Failure{Resource: r, Kind: KindFetch, Err: fmt.Errorf("document exceeds %d bytes", maxDocumentSize)}
	}

	apply, err := decode(r, raw)
	if err != nil {
		return nil, &Failure{Resource: r, Kind: KindParse, Err: err}
	}

	return apply, nil
}

func decode(r Resource, raw []byte) (func(*Document), error) {
	switch r {
	case ResourceSite:
		var p Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", r.Path(), err)
		}

		return func(d *Document) { d.Profile = &p }, nil
	case ResourceSkills:
		list, err := decodeList[Skill](r, raw)

		return func(d *Document) { d.Skills = list }, err
	case ResourceCertifications:
		list, err := decodeList[Certification](r, raw)

		return func(d *Document) { d.Certifications = list }, err
	case ResourceExperience:
		list, err := decodeList[Role](r, raw)

		return func(d *Document) { d.Experience = list }, err
	case ResourceEducation:
		list, err := decodeList[Education](r, raw)

		return func(d *Document) { d.Education = list }, err
	case ResourceLeadership:
		list, err := decodeList[Role](r, raw)

		return func(d *Document) { d.Leadership = list }, err
	case ResourceProjects:
		list, err := decodeList[Project](r, raw)

		return func(d *Document) { d.Projects = list }, err
	default:
		return nil, fmt.Errorf("unknown resource %q", r)
	}
}

// decodeList never returns a nil slice on success so an empty collection is
// distinguishable from a skipped one.
func decodeList[T any](r Resource, raw []byte) ([]T, error) {
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", r.Path(), err)
	}

	if list == nil {
		list = []T{}
	}

	return list, nil
}

// LoadProfile retrieves only the site resource.
func LoadProfile(ctx context.Context, src Source) (*Profile, error) {
	apply, failure := retrieve(ctx, src, ResourceSite)
	if failure != nil {
		return nil, failure
	}

	var doc Document
	apply(&doc)

	return doc.Profile, nil
}

// Count is the number of records r contributed. The profile counts as one.
func (d *Document) Count(r Resource) int {
	switch r {
	case ResourceSite:
		if d.Profile != nil {
			return 1
		}
	case ResourceSkills:
		return len(d.Skills)
	case ResourceCertifications:
		return len(d.Certifications)
	case ResourceExperience:
		return len(d.Experience)
	case ResourceEducation:
		return len(d.Education)
	case ResourceLeadership:
		return len(d.Leadership)
	case ResourceProjects:
		return len(d.Projects)
	}

	return 0
}
