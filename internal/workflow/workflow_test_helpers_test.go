package workflow

import (
	"go.temporal.io/sdk/testsuite"

	"github.com/edvin/jobboard/internal/activity"
)

// registerActivities registers activity structs with the test workflow
// environment so that parameter and return types can be deserialized correctly
// by the Temporal test framework. All activities are mocked via OnActivity,
// but the framework still needs the type information.
func registerActivities(env *testsuite.TestWorkflowEnvironment) {
	env.RegisterActivity(&activity.BillingDB{})
	env.RegisterActivity(&activity.Notify{})
}
