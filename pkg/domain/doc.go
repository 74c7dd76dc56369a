/*
Package domain contains the core models shared by the test runner MCP server.

It is kept free of transport and engine dependencies so the dispatcher, the translator
and every engine adapter can agree on one vocabulary.

# Key Entities

  - Session: the identifier and type of the single session currently open in the engine.
  - StepRequest: a generic, engine-agnostic description of one automation step.
  - RunnerOptions: the suite/test/step run configuration document understood by engines.
  - SessionResult: the uniform {success, ...} envelope returned by every engine entry point.
*/
package domain
