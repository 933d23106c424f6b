// Package core contains the domain contracts and value types of ConvoMem:
// the Message and Conversation log, view and memory settings, named memory
// profiles, the ConversationStore persistence port and the shared error
// types. Higher level packages (view, memory, engine) depend on core;
// concrete store backends implement its interfaces in subpackages to avoid
// dependency cycles.
package core
