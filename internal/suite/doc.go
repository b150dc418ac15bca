// Package suite runs browser test suites against a single instance.
//
// A Suite is a named list of Cases with an optional BeforeEach. Cases are
// plain functions receiving a *T, which wraps the instance page, the
// retrying visitor, the fixture table and gomega assertions:
//
//	suite.Suite{
//	    Name: "homepage",
//	    Cases: []suite.Case{
//	        {Name: "should load the homepage", Fn: func(t *suite.T) error {
//	            if err := t.Visit("/"); err != nil {
//	                return err
//	            }
//	            t.Expect(t.Page().BodyVisible(t.Context())).To(BeTrue())
//	            return nil
//	        }},
//	    },
//	}
//
// # Outcome of a case
//
//	┌──────────────────────────────┬─────────┐
//	│ Case ends with               │ Status  │
//	├──────────────────────────────┼─────────┤
//	│ nil                          │ passed  │
//	│ error / failed assertion     │ failed  │
//	│ t.Fail / panic               │ failed  │
//	│ t.Skip / SkipIfUnsupported   │ skipped │
//	└──────────────────────────────┴─────────┘
//
// Failed cases are retried up to RunnerOptions.Retries times. A screenshot
// is taken after the last failed attempt when screenshotOnRunFailure is set.
//
// # Built-in suites
//
//	┌───────────────────┬─────────────────────────────────────────────┐
//	│ Suite             │ Covers                                      │
//	├───────────────────┼─────────────────────────────────────────────┤
//	│ homepage          │ load, title, visible body, load time, shot  │
//	│ navigation        │ body and resources after visiting "/"       │
//	│ performance       │ timings, metrics file, resource count       │
//	│ instance-specific │ fixtures, instance kind, retried visits     │
//	└───────────────────┴─────────────────────────────────────────────┘
//
// Select filters suites by their name with a path.Match pattern.
package suite
