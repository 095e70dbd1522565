/*
Package ports defines the driven ports (interfaces) for the PermitPath engine.

These interfaces decouple the core flow logic from external implementations,
allowing the engine to work with various tree sources and session storage
backends.

# Key Interfaces

  - TreeSource: Responsible for resolving question trees by project type.
  - SessionStore: Responsible for persisting and loading walkthrough sessions.
  - Watchable: Implemented by tree sources that can signal backend changes.
*/
package ports
