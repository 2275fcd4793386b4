package generator

import (
	"fmt"

	"github.com/appforge-io/appforge/internal/pkg/slug"
	"github.com/appforge-io/appforge/internal/pkg/treepath"
)

// NodeSpec is one synthesized file or folder, emitted in creation order:
// a folder always precedes every node inside it.
type NodeSpec struct {
	Path     string
	Name     string
	Content  string
	IsFolder bool
}

// Synthesize produces the deterministic skeleton for an archetype. Content
// embeds the literal project name; package manifests embed the canonicalized
// identifier so the output is always a valid package name.
func Synthesize(archetype Archetype, projectName string) []NodeSpec {
	id := slug.Make(projectName)

	switch archetype {
	case ArchetypeFullStack:
		return fullStackNodes(projectName, id)
	case ArchetypeAPI:
		return apiNodes(projectName, id)
	case ArchetypeFrontend:
		return frontendNodes(projectName, id)
	default:
		return basicNodes(projectName)
	}
}

func folder(path string) NodeSpec {
	return NodeSpec{Path: path, Name: treepath.Base(path), IsFolder: true}
}

func file(path, content string) NodeSpec {
	return NodeSpec{Path: path, Name: treepath.Base(path), Content: content}
}

func frontendNodes(name, id string) []NodeSpec {
	return []NodeSpec{
		folder("/src"),
		folder("/public"),
		file("/package.json", fmt.Sprintf(`{
  "name": "%s",
  "version": "0.1.0",
  "private": true,
  "dependencies": {
    "react": "^18.2.0",
    "react-dom": "^18.2.0",
    "react-scripts": "5.0.1"
  },
  "scripts": {
    "start": "react-scripts start",
    "build": "react-scripts build",
    "test": "react-scripts test"
  }
}
`, id)),
		file("/public/index.html", fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>%s</title>
  </head>
  <body>
    <div id="root"></div>
  </body>
</html>
`, name)),
		file("/src/index.js", `import React from 'react';
import ReactDOM from 'react-dom/client';
import './App.css';
import App from './App';

const root = ReactDOM.createRoot(document.getElementById('root'));
root.render(
  <React.StrictMode>
    <App />
  </React.StrictMode>
);
`),
		file("/src/App.jsx", fmt.Sprintf(`import React from 'react';
import './App.css';

function App() {
  return (
    <div className="app">
      <header className="app-header">
        <h1>%s</h1>
        <p>Generated by AppForge. Start editing to build your app.</p>
      </header>
    </div>
  );
}

export default App;
`, name)),
		file("/src/App.css", `.app {
  text-align: center;
}

.app-header {
  min-height: 100vh;
  display: flex;
  flex-direction: column;
  align-items: center;
  justify-content: center;
  background-color: #282c34;
  color: white;
}
`),
	}
}

func apiNodes(name, id string) []NodeSpec {
	return []NodeSpec{
		folder("/src"),
		folder("/src/routes"),
		file("/package.json", fmt.Sprintf(`{
  "name": "%s",
  "version": "0.1.0",
  "main": "src/server.js",
  "dependencies": {
    "express": "^4.18.2",
    "cors": "^2.8.5",
    "dotenv": "^16.3.1"
  },
  "scripts": {
    "start": "node src/server.js",
    "dev": "nodemon src/server.js"
  }
}
`, id)),
		file("/src/server.js", fmt.Sprintf(`const express = require('express');
const cors = require('cors');
require('dotenv').config();

const apiRoutes = require('./routes/api');

// %s
const app = express();
app.use(cors());
app.use(express.json());
app.use('/api', apiRoutes);

const port = process.env.PORT || 3000;
app.listen(port, () => {
  console.log('%s listening on port ' + port);
});
`, name, name)),
		file("/src/routes/api.js", `const express = require('express');
const router = express.Router();

router.get('/health', (req, res) => {
  res.json({ status: 'ok' });
});

router.get('/items', (req, res) => {
  res.json({ items: [] });
});

module.exports = router;
`),
		file("/.env.example", `PORT=3000
DATABASE_URL=
`),
	}
}

func fullStackNodes(name, id string) []NodeSpec {
	return []NodeSpec{
		folder("/client"),
		folder("/client/src"),
		folder("/server"),
		file("/package.json", fmt.Sprintf(`{
  "name": "%s",
  "version": "0.1.0",
  "private": true,
  "workspaces": ["client", "server"],
  "scripts": {
    "dev": "concurrently \"npm run dev -w server\" \"npm start -w client\""
  }
}
`, id)),
		file("/client/package.json", fmt.Sprintf(`{
  "name": "%s-client",
  "version": "0.1.0",
  "private": true,
  "dependencies": {
    "react": "^18.2.0",
    "react-dom": "^18.2.0"
  }
}
`, id)),
		file("/client/src/App.jsx", fmt.Sprintf(`import React, { useEffect, useState } from 'react';

function App() {
  const [message, setMessage] = useState('loading...');

  useEffect(() => {
    fetch('/api/health')
      .then((res) => res.json())
      .then((data) => setMessage(data.status));
  }, []);

  return (
    <div>
      <h1>%s</h1>
      <p>API status: {message}</p>
    </div>
  );
}

export default App;
`, name)),
		file("/server/index.js", fmt.Sprintf(`const express = require('express');

// %s API
const app = express();
app.use(express.json());

app.get('/api/health', (req, res) => {
  res.json({ status: 'ok' });
});

app.listen(process.env.PORT || 3001);
`, name)),
		file("/README.md", fmt.Sprintf(`# %s

Full-stack application generated by AppForge.

- `+"`client/`"+` - React frontend
- `+"`server/`"+` - Express API
`, name)),
	}
}

func basicNodes(name string) []NodeSpec {
	return []NodeSpec{
		file("/index.html", fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>%s</title>
    <link rel="stylesheet" href="style.css" />
  </head>
  <body>
    <main>
      <h1>%s</h1>
      <p>Generated by AppForge.</p>
    </main>
    <script src="script.js"></script>
  </body>
</html>
`, name, name)),
		file("/style.css", `body {
  margin: 0;
  font-family: system-ui, sans-serif;
}

main {
  max-width: 640px;
  margin: 4rem auto;
  padding: 0 1rem;
}
`),
		file("/script.js", fmt.Sprintf(`console.log('%s ready');
`, name)),
		file("/README.md", fmt.Sprintf(`# %s

Static site generated by AppForge.
`, name)),
	}
}
