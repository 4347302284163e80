// Package rag defines the wire types of the external knowledge retrieval API.
//
// A client (typically a Dify workspace configured with an external knowledge
// base) posts a RetrievalRequest and receives a RetrievalResponse whose
// records are the knowledge base chunks that met the requested score
// threshold, in the order the knowledge base returned them.
package rag
