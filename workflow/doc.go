// Package workflow talks to the CI runner through the files and stdout
// commands it exposes: step outputs (GITHUB_OUTPUT), the job summary
// (GITHUB_STEP_SUMMARY) and annotations such as ::error::.
package workflow
