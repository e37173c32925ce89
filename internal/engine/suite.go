package engine

import (
	"xctestgo/internal/observe"
	"xctestgo/internal/result"
)

// Suite is a composite TestEntity: an ordered, exclusively-owned list
// of children, executed depth-first. A Suite that models a test class
// additionally carries ClassSetUp/ClassTearDown, run exactly once
// around its children rather than once per child.
type Suite struct {
	Name     string
	Children []TestEntity

	// ClassSetUp and ClassTearDown, when set, run once before the first
	// child and once after the last, implementing the once-per-class
	// setUp/tearDown protocol for a suite that represents a test class.
	ClassSetUp    func() error
	ClassTearDown func() error
}

// TestEntity is the uniform capability every Case and Suite satisfies.
type TestEntity interface {
	DisplayName() string
	CaseCount() int
	Execute(hub *observe.Hub) result.Accumulator
}

// DisplayName is the suite's name.
func (s *Suite) DisplayName() string { return s.Name }

// CaseCount sums the case counts of every child.
func (s *Suite) CaseCount() int {
	total := 0
	for _, c := range s.Children {
		total += c.CaseCount()
	}
	return total
}

// Execute runs the composite lifecycle template: instantiate a
// Composite record, run preBody/child executions/postBody, and let the
// record derive its own span from the children it accumulates.
func (s *Suite) Execute(hub *observe.Hub) result.Accumulator {
	record := result.NewComposite()

	hub.SuiteWillStart(s.Name)

	s.preBody()
	for _, child := range s.Children {
		childRecord := child.Execute(hub)
		record.Append(childRecord)
	}
	s.postBody()

	hub.SuiteDidFinish(s.Name, record)

	return record
}

func (s *Suite) preBody() {
	if s.ClassSetUp == nil {
		return
	}
	if err := s.ClassSetUp(); err != nil {
		// A failing class-level setUp is attributed to every case in the
		// class, since there is no single running case to route it to
		// at the suite boundary.
		for _, child := range s.Children {
			if c, ok := child.(*Case); ok {
				c.classSetUpError = err
			}
		}
	}
}

func (s *Suite) postBody() {
	if s.ClassTearDown == nil {
		return
	}
	if err := s.ClassTearDown(); err != nil {
		loc, message := locationOf(err)
		for _, child := range s.Children {
			if c, ok := child.(*Case); ok && c.record != nil {
				c.RecordFailure(message, loc, false)
				return
			}
		}
	}
}

var _ TestEntity = (*Suite)(nil)
var _ TestEntity = (*Case)(nil)
