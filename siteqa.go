// Package siteqa indexes a website for question answering. It crawls a
// single domain breadth-first, extracts readable text from each page,
// splits it into overlapping chunks, embeds and stores the chunks, and
// answers natural language questions from the most relevant chunks.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// gemini/, goquery/) or after their concern (crawl/, ingest/, retrieve/).
package siteqa
