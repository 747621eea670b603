package main

var page = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Cydonia Monitoring Dashboard</title>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
  <script src="https://cdn.jsdelivr.net/npm/chartjs-adapter-date-fns@3/dist/chartjs-adapter-date-fns.bundle.min.js"></script>
  <style>
  body {
    background-color: #282c34;
    color: white;
    font-family: sans-serif;
    text-align: center;
  }
  .slider-button {
    margin: 0 4px;
    padding: 8px 16px;
    background: #444;
    color: white;
    border: none;
  }
  .slider-button.active {
    background: #61dafb;
    color: black;
  }
  .error {
    color: #ff6b6b;
  }
  .stats-grid {
    display: flex;
    justify-content: center;
    gap: 20px;
  }
  .stats-card {
    background: #333;
    padding: 10px 20px;
  }
  .chart-container {
    margin: auto;
    width: 90%;
    background: white;
  }
  .data-table {
    margin: 20px auto;
    border-collapse: collapse;
  }
  .data-table td, .data-table th {
    border: 1px solid #555;
    padding: 4px 10px;
  }
  </style>
</head>
<body>
  <h1>Cydonia's Monitoring Dashboard</h1>
  <h2 id="site"></h2>
  <div class="slider-container">
    <p>Switch Mission Sites:</p>
    <div class="slider">
      {{range .Locations}}<button class="slider-button" data-id="{{.ID}}">{{.Name}}</button>{{end}}
    </div>
  </div>
  <p id="status"></p>
  <div id="content">
    <div class="chart-container"><canvas id="chart"></canvas></div>
    <h3>Statistics</h3>
    <div class="stats-grid" id="stats"></div>
    <table class="data-table">
      <thead><tr><th>Timestamp</th><th>Sensor ID</th><th>Location ID</th><th>Value</th></tr></thead>
      <tbody id="rows"></tbody>
    </table>
  </div>
  <script>
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/stream");
    var chart = new Chart(document.getElementById("chart"), {
      type: "line",
      data: { datasets: [] },
      options: {
        responsive: true,
        spanGaps: false,
        plugins: { legend: { position: "top" } },
        scales: {
          x: { type: "time", time: { unit: "minute" }, title: { display: true, text: "Timestamp" } },
          y: { title: { display: true, text: "Value" } }
        }
      }
    });

    document.querySelectorAll(".slider-button").forEach(function(b) {
      b.onclick = function() {
        ws.send(JSON.stringify({ Location: b.dataset.id }));
      };
    });

    function cell(text) {
      var td = document.createElement("td");
      td.textContent = text;
      return td;
    }

    function render(v) {
      document.getElementById("site").textContent = v.locationName;
      document.querySelectorAll(".slider-button").forEach(function(b) {
        b.classList.toggle("active", b.dataset.id === v.location);
      });
      var status = document.getElementById("status");
      var content = document.getElementById("content");
      status.className = "";
      if (v.loading) {
        status.textContent = "Loading data for " + v.locationName + "...";
        content.style.display = "none";
        return;
      }
      if (v.error) {
        status.className = "error";
        status.textContent = "Error: " + v.error;
        content.style.display = "none";
        return;
      }
      status.textContent = "";
      content.style.display = "";

      chart.data.datasets = v.sensors.map(function(s) {
        return {
          label: s.title,
          data: s.series,
          borderColor: s.color,
          backgroundColor: s.color.replace(/, 1\)$/, ", 0.2)"),
          fill: true,
          tension: 0.4
        };
      });
      chart.update();

      var grid = document.getElementById("stats");
      grid.innerHTML = "";
      v.sensors.forEach(function(s) {
        var card = document.createElement("div");
        card.className = "stats-card";
        var h = document.createElement("h4");
        h.textContent = s.title;
        card.appendChild(h);
        [["Mean", s.stats.mean], ["Median", s.stats.median], ["Min", s.stats.min],
         ["Max", s.stats.max], ["Std Dev", s.stats.stdDev]].forEach(function(kv) {
          var p = document.createElement("p");
          p.textContent = kv[0] + ": " + kv[1];
          card.appendChild(p);
        });
        grid.appendChild(card);
      });

      var rows = document.getElementById("rows");
      rows.innerHTML = "";
      v.table.forEach(function(r) {
        var tr = document.createElement("tr");
        tr.appendChild(cell(r.time));
        tr.appendChild(cell(r.sensorId));
        tr.appendChild(cell(r.locationId));
        tr.appendChild(cell(r.value));
        rows.appendChild(tr);
      });
    }

    ws.onmessage = function(event) {
      render(JSON.parse(event.data));
    };
  </script>
</body>
</html>`
