package mdpdf

// DefaultCSS is the stylesheet applied to rendered reports when no
// custom CSS is configured. Page size and margins are not set here;
// they come from the [capture.PageConfig] used for printing.
const DefaultCSS = `body {
    font-family: 'Arial', 'Helvetica', 'Segoe UI', sans-serif;
    line-height: 1.6;
    color: #333;
    max-width: 800px;
    margin: 0 auto;
    font-size: 11pt;
}
h1 {
    color: #2c3e50;
    border-bottom: 3px solid #3498db;
    padding-bottom: 10px;
}
h2 {
    color: #34495e;
    margin-top: 30px;
    border-bottom: 2px solid #ecf0f1;
    padding-bottom: 5px;
}
h3 {
    color: #7f8c8d;
    margin-top: 20px;
}
code {
    background-color: #f4f4f4;
    padding: 2px 6px;
    border-radius: 3px;
    font-family: 'Courier New', monospace;
}
pre {
    background-color: #f4f4f4;
    padding: 15px;
    border-radius: 5px;
    overflow-x: auto;
}
table {
    border-collapse: collapse;
    width: 100%;
    margin: 20px 0;
}
th, td {
    border: 1px solid #ddd;
    padding: 12px;
    text-align: left;
}
th {
    background-color: #3498db;
    color: white;
}
img {
    display: block;
    max-width: 100%;
    height: auto;
    margin: 20px auto;
}
ul, ol {
    margin: 15px 0;
    padding-left: 30px;
}
li {
    margin: 8px 0;
}
strong {
    color: #2c3e50;
}
`
