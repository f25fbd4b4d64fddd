// Package mcp exposes calculator sessions as Model Context Protocol tools.
//
// Each session owns an independent engine, dispatcher and formatter.
// Tools address a session by the ID returned from new_session:
//
//	new_session                 -> session ID
//	press(session_id, keys)     -> display lines after the keys
//	display(session_id)         -> previous and current line
//	snapshot(session_id)        -> JSON document
//	clear(session_id)           -> display lines after clearing
//	close_session(session_id)   -> releases the session
//
// The server speaks MCP over stdio.
package mcp
