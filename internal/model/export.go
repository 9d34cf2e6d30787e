package model

// ExportChatResult is the rendered chat and the blob filenames it
// references. HTML refers to each blob as "blobs/<filename>"; the caller is
// responsible for placing those files next to the document.
type ExportChatResult struct {
	HTML            string   `json:"html"`
	ReferencedBlobs []string `json:"referenced_blobs"`
}

// DumpData is the top-level structure of a JSON dump accepted by import.
type DumpData struct {
	Version  int        `json:"version"`
	Chats    []*Chat    `json:"chats"`
	Contacts []*Contact `json:"contacts"`
	Messages []*Message `json:"messages"`
}
