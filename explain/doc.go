// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package explain renders short human-readable sentences describing why a
// ranked course matched a query and where its skills apply locally.
//
// Explanations are derived from item content and the raw query only. They
// never influence ranking and the same inputs always produce the same text.
//
// Sentences are rendered from prompt templates (Go template syntax) so
// callers can replace the wording without touching the selection rules:
//
//	r, err := explain.NewRenderer(
//	    explain.WithTemplate(explain.SkillsOnly, "Builds {{.skills}}."),
//	)
//	exp, err := r.Explain(result, "learn python")
package explain
