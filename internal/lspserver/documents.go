package lspserver

import (
	"sync"

	"github.com/tinovyatkin/writegood/internal/document"
)

// OpenDocument is a text document the editor currently has open.
type OpenDocument struct {
	ID         document.ID
	LanguageID string

	// Version is the document version as reported by the client.
	Version int32

	// Text is the current full text of the document.
	Text string
}

// Snapshot returns the document as handed to lifecycle handlers.
func (d OpenDocument) Snapshot() document.Document {
	return document.Document{ID: d.ID, LanguageID: d.LanguageID, Text: d.Text}
}

// DocumentStore tracks open documents so that change, save and close
// events, which carry no language identifier, can be resolved.
// It is safe for concurrent access.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[document.ID]OpenDocument
}

// NewDocumentStore creates a new empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[document.ID]OpenDocument),
	}
}

// Open adds or replaces a document in the store.
func (s *DocumentStore) Open(id document.ID, languageID string, version int32, text string) OpenDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := OpenDocument{ID: id, LanguageID: languageID, Version: version, Text: text}
	s.docs[id] = doc
	return doc
}

// Update replaces the text and version of an open document.
// The second result is false if the document is not open.
func (s *DocumentStore) Update(id document.ID, version int32, text string) (OpenDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return OpenDocument{}, false
	}
	doc.Version = version
	doc.Text = text
	s.docs[id] = doc
	return doc, true
}

// Close removes a document from the store.
func (s *DocumentStore) Close(id document.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
}

// Get retrieves an open document.
func (s *DocumentStore) Get(id document.ID) (OpenDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// Len reports the number of open documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
